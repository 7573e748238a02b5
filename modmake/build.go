package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	avsVersion = "2.0.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	cli := NewAppBuild("avscipher", "cmd/avscipher", avsVersion)
	cli.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", avsVersion).
			CgoEnabled(false)
	})
	cli.Variant("windows", "amd64")
	cli.Variant("linux", "amd64")
	cli.Variant("linux", "arm64")
	cli.Variant("darwin", "amd64")
	cli.Variant("darwin", "arm64")
	b.ImportApp(cli)

	server := NewAppBuild("avsserver", "cmd/avsserver", avsVersion)
	server.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", avsVersion).
			CgoEnabled(false)
	})
	server.Variant("linux", "amd64")
	server.Variant("linux", "arm64")
	b.ImportApp(server)

	b.Execute()
}
