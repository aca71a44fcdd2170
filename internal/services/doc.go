// Package services implements the account core: authentication and
// sessions (AuthManager), account status changes (AccountManager) and
// balance operations (TransactionManager).
//
// Every privileged call takes an explicit models.Session. The user record is
// re-read from the store on each call and the session is checked against it,
// so a session ended elsewhere is noticed immediately. When saving fails the
// in-memory change is reverted and the caller gets an error wrapping
// common.ErrPersist; the stored state is never half-updated.
package services
