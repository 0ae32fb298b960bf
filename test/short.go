// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import "testing"

// MarkAsLong marks the test as one that touches the host system,
// e.g. by opening sockets. It is skipped if the -short flag is set.
func MarkAsLong(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping host test in short mode")
	}
}
