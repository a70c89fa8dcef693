/*
Package cash keeps track of coin balances and moves coins between
accounts.

There is no logic in the coins (tokens), except that the balance of
any coin may not go below zero. On top of plain transfers, an account
may reserve part of its balance. Reserved coins stay in the account
but cannot be spent until they are released, or repatriated to another
account. Extensions that need an escrow-like guarantee build on this.
*/
package cash
