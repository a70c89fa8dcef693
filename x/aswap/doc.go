/*

Package aswap implements hash locked atomic swaps.

A swap is an agreement, locked by a preimage hash, that an action is
taken once the recipient proves knowledge of the secret. The funds the
action needs are reserved on the source account when the swap is
created, so a claim cannot fail for lack of coverage after the secret
was revealed.

The protocol runs as follows:
1. The recipient on the other chain generates a secret preimage and
stores it in a secure place.
2. The blake2b-256 hash of the preimage is exchanged between the
parties.
3. The source opens a swap to the target under this hash, reserving
the action funds for a fixed number of blocks.
4. The target claims by revealing the preimage before the duration
ends. Revealing it lets the counterparty claim the paired swap on the
other chain with the same secret.
5. If nobody claims, the source cancels once the duration passed and
the reserved funds are released.
6. The swap is removed on claim and on cancel.

One recipient can have any number of open swaps, but only one per
secret.

*/
package aswap
