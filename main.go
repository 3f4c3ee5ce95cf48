// extract-mysql-tables is a CLI tool for exporting the tables of a MySQL
// database to tab-separated values files.
//
// Usage:
//
//	extract-mysql-tables [-u USER] [-p PASSWORD] [--host HOST] [--table-type {1,2,3}] [-o DIR] database [table-file]
//	  Export every table (or those listed in table-file, one per line) to
//	  <DIR>/<table>.tsv. The password is prompted for when not given.
package main

import "extractmysql/cmd"

func main() {
	cmd.Execute()
}
