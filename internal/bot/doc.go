// Package bot implements the Telegram front-end of keywordstat.
//
// Each chat runs a small finite-state flow:
//
//	idle -> awaiting keywords -> awaiting frequency choice ->
//	awaiting limit choice -> fetching -> idle
//
// The user sends a keyword list as free-form text, answers two inline
// keyboard prompts (include frequency data? how many result rows?), and
// receives an .xlsx document. /start resets the flow; /cancel clears it
// unconditionally.
//
// Session state is a small mutable struct scoped to one chat's in-progress
// flow, held in a mutex-guarded map. Parser errors leave the session
// untouched so the user can resend a corrected list; provider and export
// errors clear the session because the flow must be restarted.
//
// Updates from different chats are handled concurrently with a bounded
// errgroup; one chat's long-running fetch never blocks other chats.
package bot
