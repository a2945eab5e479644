// Package signal implements the single-signal reader of this module: a
// sequential or random-access view over one signal's samples, whether its
// file is dedicated to that signal alone or interleaved with others.
//
// Reader does not parse headers; callers (such as the frame package)
// supply the already-parsed header.SignalSpec plus the signal's position
// within its file group. A signal that owns its file outright is
// constructed with a group size of 1, which lets Reader skip all
// de-interleaving bookkeeping and decode straight off the stream.
package signal
