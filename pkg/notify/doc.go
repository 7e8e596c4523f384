// Package notify reports wake results to the user.
//
// A Notifier receives one Event per wake request. Event.Text renders the
// short user-facing sentence; Event.Detail carries the broadcaster's
// diagnostic for logs. Implementations write to a pion logger
// (LogNotifier), to any io.Writer (WriterNotifier), or fan out to several
// notifiers (Multi).
package notify
