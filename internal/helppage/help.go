// Package helppage serves the built-in pages: anything under the
// reserved gopher://burrow/ host. The pages are themselves gopher
// menus, so the regular menu view renders and navigates them.
package helppage

import "strings"

// Lookup resolves an internal selector to a page title and raw menu
// payload. Selectors are matched after trimming slashes, so "help",
// "/help" and "help/" are the same page.
func Lookup(selector string) (title, raw string, ok bool) {
	switch strings.Trim(selector, "/") {
	case "", "home":
		return "Home", homePage, true
	case "help":
		return "Help", helpPage, true
	case "help/keys":
		return "Keyboard Shortcuts", keysPage, true
	case "help/nav":
		return "Menu Navigation", navPage, true
	case "help/types":
		return "Gopher Item Types", typesPage, true
	case "help/bookmarks":
		return "About Bookmarks", bookmarksHelpPage, true
	case "help/history":
		return "About History", historyHelpPage, true
	default:
		return "", "", false
	}
}

const homePage = `i
i      /\_/\
i     ( o.o )   burrow
i      > ^ <    a snappy gopher client
i
7Search gopherspace via Veronica-2	/v2/vs	gopher.floodgap.com	70
1Floodgap home	/	gopher.floodgap.com	70
1The Gopher Lawn	/lawn	bitreich.org	70
1SDF public gopherspace	/	sdf.org	70
i
1Help	/help	burrow	70
1Bookmarks	/bookmarks	burrow	70
1History	/history	burrow	70
.
`

const helpPage = `i
i     burrow help
i
1Keyboard shortcuts	/help/keys	burrow	70
1Navigating menus	/help/nav	burrow	70
1Gopher item types	/help/types	burrow	70
1Bookmarks	/help/bookmarks	burrow	70
1History	/help/history	burrow	70
i
iFound a bug?
hOpen an issue	URL:https://github.com/glabrego/burrow/issues/new	null.host	1
.
`

const keysPage = `i
i     keyboard shortcuts
i
ileft / ctrl+b      back
iright / ctrl+f     forward
iup, down           move selection / scroll
ipage up, -         scroll up a page
ipage down, space   scroll down a page
ienter              open selection
i
ig / ctrl+g         go to URL
iu / ctrl+u         show current URL
iy / ctrl+y         copy current URL
ir / ctrl+r         view raw source
iw / ctrl+w         toggle wide mode
ie                  toggle emoji status badges
i
ia                  add bookmark
ib / ctrl+o         show bookmarks
ih                  go home
is / ctrl+h         show history
i
ictrl+z             suspend to the shell
iq / ctrl+q / esc   quit (asks first)
ictrl+c             quit immediately
.
`

const navPage = `i
i     navigating menus
i
iMenus are lists of lines; link lines can be selected and
iopened, info lines are just text.
i
iType any letter to jump to the next link containing what
iyou typed. Keep typing to refine the match; backspace
iedits it and escape clears it.
i
iOn menus with nine links or fewer, pressing a digit opens
ithat link immediately. On longer menus a digit only moves
ithe selection, and enter confirms.
.
`

const typesPage = `i
i     gopher item types
i
i0   text file
i1   menu (directory)
i2   CSO phone book (unsupported)
i3   error
i7   search server (prompts for a query)
i8   telnet session
ig   GIF image (downloads)
ih   HTML page (opens in your browser)
iI   image (downloads)
ip   PNG image (downloads)
is   sound file (downloads)
i9   binary file (downloads)
id   document (downloads)
i
iAnything else renders as plain text where possible.
.
`

const bookmarksHelpPage = `i
i     bookmarks
i
iPress "a" on any page to bookmark it. Press "b" to open
ithe bookmark list; entries there open like any other
imenu link.
i
1Show bookmarks	/bookmarks	burrow	70
.
`

const historyHelpPage = `i
i     history
i
iEvery page you visit is recorded. Press "s" to browse
iyour history, most recent first.
i
1Show history	/history	burrow	70
.
`
