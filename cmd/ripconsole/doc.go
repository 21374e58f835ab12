// Command ripconsole browses completed rip jobs and batch-renames the output
// folders of TV series discs.
//
//	ripconsole jobs list --eligible
//	ripconsole rename analyze 12 13 14
//	ripconsole rename preview 12 13 14 --series-name "Breaking Bad"
//	ripconsole rename execute 12 13 14 --series-name "Breaking Bad" --yes
//	ripconsole serve
//	ripconsole logs --job 12 --follow
//
// Every command that prints a table also accepts --json, which emits the same
// payload the HTTP API returns.
package main
