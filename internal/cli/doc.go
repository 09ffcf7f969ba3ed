// Package cli implements the swim command-line interface.
//
// The CLI exposes the section scrapers as subcommands (teams, roster,
// meets, meet, swimmer, all-meets, calendar) with text and JSON output.
// The meets --check mode tracks a team's meets across runs and exits
// with code 2 when newly-posted meets are found, so cron jobs can chain
// the announcer on new results.
package cli
