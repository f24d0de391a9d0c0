// Package session runs matching over many books concurrently.
//
// A Session wraps one matcher, one shared cache pair, and a bounded worker
// pool. Escalations to the interactive chooser are serialized so prompts
// never interleave; all other work proceeds in parallel. Cancelling a
// session lets in-flight gateway calls finish while every remaining book
// reports a cancelled outcome. When a journal is attached, each book's
// terminal decision and the session tally are recorded.
package session
