// Package server runs the long-lived console process: it holds the
// single-instance lock and serves the JSON API used by the browser console
// and scripts.
//
// Routes:
//
//	GET  /api/status                      server state and job counts
//	GET  /api/jobs[?eligible=batch_rename] job listing
//	GET  /api/jobs/{id}                   single job
//	POST /api/batch-rename/analyze        infer the series name
//	POST /api/batch-rename/preview        compute target folders
//	POST /api/batch-rename/execute        rename folders
//
// When paths.api_token is set every request must carry
// "Authorization: Bearer <token>".
package server
