// Package email schedules outbound mail without blocking the caller. The
// scheduler accepts a message synchronously and hands the actual delivery to
// the background executor fire-and-forget: a failed send is logged and
// counted, never retried, and never surfaces to the request that caused it.
package email

// Data is one outbound email.
type Data struct {
	Sender    string
	Recipient string
	Subject   string
	Body      string
}
