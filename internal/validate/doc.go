// Package validate performs local, pre-network validation of credential
// exchange inputs. A rejection here costs zero network calls.
package validate
