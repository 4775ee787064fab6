package db

import "embed"

// Schema holds one bootstrap DDL file per supported dialect.
//
//go:embed schema/*.sql
var Schema embed.FS
