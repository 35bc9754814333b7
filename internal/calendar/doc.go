// Package calendar resolves the observation window of a run on an exchange trading calendar.
//
// A Calendar is ordered newest first, so stepping back in time means moving to
// larger positions. Resolve first settles the nominal end date onto the last
// session whose close is final, then walks back a fixed number of open sessions
// to find the start date.
package calendar
