// Package attachments reads attachment records from a Zotero SQLite database
// and converts them into identity sets for reconciliation.
package attachments
