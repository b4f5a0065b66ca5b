// Package signals turns a validated strategy graph and a bar table into
// per-bar trading signals.
//
// Every entry and exit action is compiled through its own dependency
// subgraph. All actions of one Compile call share a single evaluation
// context, so a node feeding several actions is computed once.
//
// Entry actions are classified LONG (side BUY) or SHORT (side SELL). On a
// row where both directions fire, SHORT wins and EntryDirection is -1.
// Exit actions are not distinguished by side: any exit firing sets
// ExitSignal.
package signals
