/*
Package errors implements custom error interfaces for weft.

The idea is to reuse a set of root error instances declared here (or
registered by an extension) and wrap them with additional context
whenever an error occurs. Wrapping attaches a stack trace once, at the
lowest frame, and preserves the ABCI error code of the root so a client
can classify any failure without parsing message strings.

Use (*Error).Is to test what kind of error any (wrapped) instance is.
*/
package errors
