// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ScriptNotFoundId Id = iota + 1
	ScriptLoadFailedId
	ScriptRuntimeErrorId
	HttpRequestFailedId
	RegexCompileErrorId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
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

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# Script not found!

We searched for a script but couldn't find one in any search location.

## Search locations (in order of precedence):
1. Current directory
2. The per-user scripts directory (e.g. ~/.local/share/lunash/scripts)
3. Directories listed in LUA_SCRIPT_PATH
4. Paths configured under script_path in your config file

## Things you can try:
- Create a skeleton script in your current directory:
~~~
$ lunash init <name>
~~~

- List every script the runner can see:
~~~
$ lunash list
~~~

- Check for typos in the script name. The file on disk must be named
  exactly:
~~~
<name>.lunash.lua
~~~`,
	}

	scriptLoadFailedIssue = &Issue{
		id: ScriptLoadFailedId,
		mdMsg: `
# Failed to load script!

The script was resolved but its contents could not be read.

## Common causes:
- The file was removed between resolution and loading
- The file is not readable by your user
- The path points to a directory, not a file

## Things you can try:
- Check which file was resolved:
~~~
$ lunash which <name>
~~~

- Check the file's permissions and ownership`,
	}

	scriptRuntimeErrorIssue = &Issue{
		id: ScriptRuntimeErrorId,
		mdMsg: `
# Script execution failed!

The Lua interpreter raised an error that the script did not catch.

## Common causes:
- A syntax error in the script
- A runtime error (nil indexing, calling a non-function, ...)
- A host module call that failed (network error, bad pattern, IO error)

## Things you can try:
- Read the error message above; it names the script and line number
- Wrap failing host calls in pcall to handle them inside the script:
~~~lua
local ok, body = pcall(function() return http.get(url) end)
if not ok then print("request failed: " .. body) end
~~~

- Run with verbose mode for more details:
~~~
$ lunash --verbose run <name>
~~~`,
	}

	httpRequestFailedIssue = &Issue{
		id: HttpRequestFailedId,
		mdMsg: `
# HTTP request failed!

An http.get or http.post call could not complete.

## Common causes:
- The host is unreachable or the name does not resolve
- The request exceeded the configured timeout
- TLS negotiation failed

## Things you can try:
- Check the URL and your network connection
- Raise the timeout in your config file:
~~~toml
[http]
timeout_seconds = 60
~~~

- Catch the error inside the script with pcall instead of letting it
  terminate the run`,
	}

	regexCompileErrorIssue = &Issue{
		id: RegexCompileErrorId,
		mdMsg: `
# Invalid regular expression!

A regex(...) constructor was given a pattern that does not compile.

## Keep in mind:
- Patterns use RE2 syntax (no backreferences, no lookaround)
- Backslashes must be escaped inside double-quoted Lua strings;
  prefer long-bracket strings for patterns:
~~~lua
local re = regex([[\d+]])
~~~

## Things you can try:
- Check the pattern against the RE2 syntax reference
- Test the pattern in isolation with a small script`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the lunash configuration file.

## Configuration file locations:
- Linux: ~/.config/lunash/config.toml
- macOS: ~/Library/Application Support/lunash/config.toml
- Windows: %APPDATA%\lunash\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ lunash config init
~~~

- Check the TOML syntax
- Remove the config file to fall back to defaults

## Example configuration:
~~~toml
script_path = ["/home/user/shared-scripts"]

[http]
timeout_seconds = 30

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The resolved script file is not readable
- A script tried to readlink a path you cannot access
- lunash init tried to write into a directory you don't own

## Things you can try:
- Check file/directory permissions
- Run lunash from a directory you own`,
	}

	issues = map[Id]*Issue{
		scriptNotFoundIssue.Id():     scriptNotFoundIssue,
		scriptLoadFailedIssue.Id():   scriptLoadFailedIssue,
		scriptRuntimeErrorIssue.Id(): scriptRuntimeErrorIssue,
		httpRequestFailedIssue.Id():  httpRequestFailedIssue,
		regexCompileErrorIssue.Id():  regexCompileErrorIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
