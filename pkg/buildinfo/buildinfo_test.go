package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "src.slt.sh/pkg/prog/progtest"
	"src.slt.sh/pkg/tt"
)

func TestProgram(t *testing.T) {
	Test(t, Program{},
		ThatSlt("-version").WritesStdout(Value.Version+"\n"),
		ThatSlt("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatSlt("-buildinfo").WritesStdout(
			fmt.Sprintf("Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		ThatSlt("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),
		// -buildinfo wins over -version.
		ThatSlt("-version", "-buildinfo").WritesStdoutContaining("Go version: "),

		ThatSlt().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func noBuildInfo() (*debug.BuildInfo, bool) { return nil, false }

func withBuildInfo(bi debug.BuildInfo) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) { return &bi, true }
}

func vcs(revision, time, modified string) debug.BuildInfo {
	return debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestDevVersion(t *testing.T) {
	const rev = "abcdef0123456789"
	tt.Test(t, devVersion,
		tt.Args("1.2.0", "", noBuildInfo).Rets("1.2.0-dev.unknown"),
		tt.Args("1.2.0", "", withBuildInfo(debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})).
			Rets("1.2.0-dev.unknown"),
		tt.Args("1.2.0", "", withBuildInfo(debug.BuildInfo{Main: debug.Module{Version: "v1.1.0"}})).
			Rets("1.1.0"),
		tt.Args("1.2.0", "", withBuildInfo(vcs(rev, "2026-03-04T05:06:07Z", "false"))).
			Rets("1.2.0-dev.0.20260304050607-abcdef012345"),
		tt.Args("1.2.0", "", withBuildInfo(vcs(rev, "2026-03-04T05:06:07+01:00", "true"))).
			Rets("1.2.0-dev.0.20260304040607-abcdef012345-dirty"),
		tt.Args("1.2.0", "", withBuildInfo(vcs(rev, "yesterday", "false"))).
			Rets("1.2.0-dev.unknown"),
		tt.Args("1.2.0", "", withBuildInfo(vcs("", "2026-03-04T05:06:07Z", "false"))).
			Rets("1.2.0-dev.unknown"),
		tt.Args("1.2.0", "20260304050607-abcdef012345", withBuildInfo(vcs(rev, "", "true"))).
			Rets("1.2.0-dev.0.20260304050607-abcdef012345"),
	)
}
