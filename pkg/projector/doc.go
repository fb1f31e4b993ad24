// Package projector maintains a directory of renamed, relative symlinks that
// mirrors a filtered view of a source directory.
//
// Every run is a full rebuild: the resulting link set equals the documents
// that currently pass the filter, so narrowing the filter between runs
// removes links rather than accumulating them. Link targets are relative to
// the link directory, keeping the project tree movable.
//
// The rebuild spans many files and is not transactional. A failure on one
// entry aborts the run and leaves the links created so far in place.
package projector
