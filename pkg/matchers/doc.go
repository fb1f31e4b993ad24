// Package matchers decides which rule files take part in a projection.
//
// Patterns are matched against a bare filename, never a path, with fnmatch
// rules: "*" matches any run of characters, "?" a single character, and
// "[...]" a class where a leading "!" negates and a leading "]" is literal.
// An unclosed "[" and a backslash are plain characters. A "**" token is
// collapsed to "*" first, so it carries no path-segment meaning.
package matchers
