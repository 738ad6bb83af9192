// Package agendah is the offline core of a personal daily journal: a local
// SQLite store for calendar entries, file attachments and cashbook items,
// the range queries and rolling KPIs that feed the calendar view, a builder
// for printable period reports, and a portable backup codec.
//
// Everything runs on a single local actor. There is no server, no sync and
// no encryption; presentation surfaces (the agh CLI under cmd/, or any
// other front end) consume this package's read/write contract.
package agendah
