// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	InvalidPatternId
	InvalidOptionsId
	NoPatternsId
	NoEntriesFoundId
	UnsupportedHostId
	PermissionDeniedId
	WatchFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guidance with glamour. stylePath is a glamour style
// name ("dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Lookup order
1. The file passed with ` + "`--config`" + `
2. ` + "`./globentries.cue`" + `
3. ` + "`config.cue`" + ` in the user configuration directory

## Things you can try:
- Print the path that would be used:
~~~
$ globentries config path
~~~
- Write a fresh default file and compare:
~~~
$ globentries config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid glob pattern!

A pattern could not be parsed. Nothing was globbed.

## Common causes
- An unclosed ` + "`[`" + ` character class or ` + "`{`" + ` alternation
- An empty or whitespace-only pattern

## Supported syntax
| Pattern | Matches |
|---|---|
| ` + "`*`" + ` | any sequence of non-separator characters |
| ` + "`**`" + ` | any number of directories |
| ` + "`?`" + ` | one non-separator character |
| ` + "`[abc]`" + ` | one character from the class |
| ` + "`{a,b}`" + ` | either alternative |

Escape a metacharacter with a backslash to match it literally.`,
		extLinks: []HttpLink{"https://github.com/bmatcuk/doublestar#patterns"},
	}

	invalidOptionsIssue = &Issue{
		id: InvalidOptionsId,
		mdMsg: `
# Invalid entry options!

` + "`entries.match`" + ` and ` + "`entries.plugin`" + ` must be objects.

## Example
~~~cue
entries: {
	patterns: ["src/pages/**/*.js"]
	match: {files_only: true, no_hidden: true}
	plugin: {naming: "basename"}
}
~~~`,
	}

	noPatternsIssue = &Issue{
		id: NoPatternsId,
		mdMsg: `
# No patterns given!

Pass one or more patterns on the command line or set ` + "`entries.patterns`" + `
in the configuration file.

~~~
$ globentries resolve 'src/**/*.js'
~~~`,
	}

	noEntriesFoundIssue = &Issue{
		id: NoEntriesFoundId,
		mdMsg: `
# No entries found!

The patterns matched no files. This is not an error, but is often a typo.

## Things you can try:
- Print the directory each pattern is rooted at:
~~~
$ globentries roots 'src/**/*.js'
~~~
- Check ` + "`--cwd`" + ` or ` + "`entries.match.cwd`" + `
- Hidden files are skipped with ` + "`--no-hidden`" + ``,
	}

	unsupportedHostIssue = &Issue{
		id: UnsupportedHostId,
		mdMsg: `
# Unsupported build host!

The host exposes neither an ` + "`AfterCompile`" + ` hook nor legacy
` + "`after-compile`" + ` callback registration, so watch directories cannot be
reported to it.`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A directory under a pattern root could not be read.

## Things you can try:
- Check the permissions of the directories being globbed
- Narrow the pattern so it does not descend into unreadable directories`,
	}

	watchFailedIssue = &Issue{
		id: WatchFailedId,
		mdMsg: `
# Failed to watch directories!

The filesystem watcher could not be started or stopped unexpectedly.

## Things you can try:
- On Linux, raise the inotify watch limit:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~
- Add large generated directories to ` + "`watch.ignore`" + ``,
		extLinks: []HttpLink{"https://github.com/fsnotify/fsnotify#faq"},
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		invalidPatternIssue.Id():   invalidPatternIssue,
		invalidOptionsIssue.Id():   invalidOptionsIssue,
		noPatternsIssue.Id():       noPatternsIssue,
		noEntriesFoundIssue.Id():   noEntriesFoundIssue,
		unsupportedHostIssue.Id():  unsupportedHostIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		watchFailedIssue.Id():      watchFailedIssue,
	}
)

// Values returns every catalogued issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for v := range maps.Values(issues) {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
