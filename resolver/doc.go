// Package resolver resolves declared command-line arguments against argv,
// environment variables and an INI config file with precedence: command line >
// environment > config file > declared default. Arguments inside an
// ArgumentGroup read their config file value from the group's section;
// top-level arguments read from the default section.
package resolver
