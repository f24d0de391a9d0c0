package filename

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Guess
	}{
		{
			name:  "separator heavy release name",
			input: "Amazing-Spider-Man_042_(2018).cbz",
			want:  Guess{Series: "Amazing Spider Man", IssueNumber: "42", Year: "2018"},
		},
		{
			name:  "decimal issue with release tags",
			input: "Saga 12.5 (2014) (digital) [Image].cbz",
			want:  Guess{Series: "Saga", IssueNumber: "12.5", Year: "2014"},
		},
		{
			name:  "alphabetic issue suffix and hash prefix",
			input: "batman_#023a (1989).cbr",
			want:  Guess{Series: "Batman", IssueNumber: "23a", Year: "1989"},
		},
		{
			name:  "volume marker dropped",
			input: "The Walking Dead v2 005.cbz",
			want:  Guess{Series: "The Walking Dead", IssueNumber: "5"},
		},
		{
			name:  "bare trailing year",
			input: "Conan the Barbarian 012 1972.cbz",
			want:  Guess{Series: "Conan the Barbarian", IssueNumber: "12", Year: "1972"},
		},
		{
			name:  "numeric series title with no issue",
			input: "300.cbz",
			want:  Guess{Series: "300"},
		},
		{
			name:  "year-looking series prefix is kept",
			input: "2000 AD 45.cbz",
			want:  Guess{Series: "2000 AD", IssueNumber: "45"},
		},
		{
			name:  "no issue number found",
			input: "watchmen.cbz",
			want:  Guess{Series: "Watchmen"},
		},
		{
			name:  "all zeros issue",
			input: "Dark Nights Metal 000 (2017).cbz",
			want:  Guess{Series: "Dark Nights Metal", IssueNumber: "0", Year: "2017"},
		},
		{
			name:  "bracketed junk only",
			input: "[scan group]{web-rip}.cbz",
			want:  Guess{},
		},
		{
			name:  "empty input",
			input: "",
			want:  Guess{},
		},
		{
			name:  "full path input",
			input: "/library/comics/Hellboy_007_(1997).cbz",
			want:  Guess{Series: "Hellboy", IssueNumber: "7", Year: "1997"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsBookFile(t *testing.T) {
	for _, name := range []string{"a.cbz", "b.CBR", "c.cbt", "d.cb7", "e.pdf", "f.zip", "g.rar", "h.7z", "i.epub"} {
		if !IsBookFile(name) {
			t.Errorf("IsBookFile(%q) = false", name)
		}
	}
	for _, name := range []string{"cover.jpg", "notes.txt", "archive.tar.gz", "noext"} {
		if IsBookFile(name) {
			t.Errorf("IsBookFile(%q) = true", name)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	const input = "Amazing-Spider-Man_042_(2018).cbz"
	first := Parse(input)
	for i := 0; i < 10; i++ {
		if got := Parse(input); got != first {
			t.Fatalf("Parse not deterministic: %+v vs %+v", got, first)
		}
	}
}
