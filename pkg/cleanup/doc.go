/*
Package cleanup executes policies against an Artifactory instance.

A Runner takes the loaded policy set and, for each policy, resolves the
target repositories, lists their artifacts, and passes the listing through
the policy's rule chain. Artifacts that survive the chain are the removal
candidates: delete rules select artifacts for deletion and keep rules
protect them, so whatever is left at the end gets removed.

Runs are dry-run by default. Deletions only happen when the Runner is
created with Destroy set, mirroring the --destroy command-line flag.

Each policy execution produces a Report; a full run across all policies
produces a Summary. When a metrics collector or history store is attached,
every report is also recorded there.
*/
package cleanup
