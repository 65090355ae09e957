package cli

import (
	"io"
	"runtime"
	"strings"
	"text/template"

	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildInfo is what `ptop version` reports. Backends lists the samplers this
// binary can use on the current OS.
type buildInfo struct {
	Version  string
	Commit   string
	Date     string
	Go       string
	Platform string
	CPUs     int
	Backends []string
}

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`ptop {{.Version}}
commit:   {{.Commit}}
built:    {{.Date}}
go:       {{.Go}} ({{.Platform}}, {{.CPUs}} cpus)
samplers: {{join .Backends ", "}}
`))

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the ptop version, build details, and the samplers available on this OS.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVersion(cmd.OutOrStdout(), currentBuild(), short)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func currentBuild() buildInfo {
	backends := []string{config.BackendGopsutil}
	if runtime.GOOS == "linux" {
		backends = append(backends, config.BackendProcfs)
	}
	return buildInfo{
		Version:  formatVersion(version),
		Commit:   commit,
		Date:     date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		CPUs:     runtime.NumCPU(),
		Backends: backends,
	}
}

// writeVersion prints the full report, or with short just the raw version
// string for scripts.
func writeVersion(w io.Writer, info buildInfo, short bool) error {
	if short {
		_, err := io.WriteString(w, version+"\n")
		return err
	}
	return versionTemplate.Execute(w, info)
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
