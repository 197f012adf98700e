// Command argconf prints the configuration a YAML argument schema resolves to
// for a given INI file, environment prefix and argument list.
//
//	argconf --schema schema.yaml --config app.ini --env-prefix APP --sources -- --foo biz 1 2
package main
