package cli

import (
	"io"
	"text/template"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/build"
)

// versionTemplate provides a Go template for displaying extended version information.
var versionTemplate = template.Must(template.New("version").Parse(`{{ with . -}}
{{.Name}}
Version:    {{.Version}}
Go version: {{.GoVersion}}
Git commit: {{.GitCommit}}
Built:      {{.BuildTime}}
OS/Arch:    {{.OperatingSystem}}/{{.Architecture}}
{{ end }}`))

// printVersion writes the build information.
func printVersion(w io.Writer) error {
	return versionTemplate.Execute(w, build.GetInfo())
}
