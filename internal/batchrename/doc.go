// Package batchrename renames the output folders of completed TV series rip
// jobs to a consistent "<series>_<disc label>" scheme.
//
// The Engine exposes three stages. Analyze infers the series name shared by a
// selection of jobs and reports conflicting names. Preview computes the target
// folder of every job without touching the filesystem. Execute performs the
// renames and persists the new paths, reporting one Outcome per job so a
// failure never stops the rest of the batch.
//
// Preview and Execute derive target paths from FolderName and TargetPath, so
// the same request always yields the same paths in both stages.
package batchrename
