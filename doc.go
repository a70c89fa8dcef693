/*
Package weft defines the common contracts that tie the framework
together: transactions and messages, handlers, the key-value store
family, results, and the context accessors shared by all extensions.

Extensions live under x/ and each one wires its message handlers into a
Registry. The processing environment applies one transaction at a time
against a cache-wrapped store, writing the cache only when the handler
returns without error, which gives every transaction all-or-nothing
semantics without any locking inside the extensions.
*/
package weft
