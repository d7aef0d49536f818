// Package script drives a tilewalk surface from text commands.
//
// A Bridge owns the handle registry and executes commands such as
//
//	map grass.png 10 6
//	sprite hero-n.png,hero-n2.png hero-s.png "" "" 2
//	on contpress "move 3 100 40 2"
//
// Creation commands return the new node's handle, a positive integer that is
// never reused. Code bound with "on" runs when the event fires; the event's
// payload is available as $<event>, for example $contpress.
//
// Startup scripts are YAML lists of commands. Each command may name its
// result with "as" so later commands can refer to it as $name.
package script
