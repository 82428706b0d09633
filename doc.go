// Package folio implements a small portfolio valuation and allocation engine:
// a holdings table priced through a market-data provider, persisted to a
// single JSON file, and summarized into sector allocation percentages.
//
// The engine is deliberately UI-agnostic. A presentation layer (the ptk CLI
// in this repository, or any other front end) resolves user decisions such as
// the duplicate-symbol merge policy before calling in, and renders whatever
// the engine returns.
package folio
