// Package meetapi observes meeting presence through the Google Meet API.
//
// Unlike the browser source it does not require a locally running
// browser: a space with a non-nil ActiveConference means a meeting is in
// progress. It needs an OAuth token (see 'meetpresence auth') and at
// least one configured space.
package meetapi
