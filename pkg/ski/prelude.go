// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package ski

import (
	"errors"

	"nickandperla.net/ski/internal/library"
	"nickandperla.net/ski/internal/stdlib"
	"nickandperla.net/ski/internal/store"
)

// PreludeKey is the metadata key under which a saved prelude is kept.
const PreludeKey = "prelude"

// DefaultPrelude contains the standard definitions that are automatically
// loaded unless WithNoStdlib is given.
var DefaultPrelude = stdlib.Prelude

// SavePrelude validates src and saves it in the store, so that later
// runtimes on the same database load it instead of DefaultPrelude.
func (r *Runtime) SavePrelude(src string) error {
	ms, ok := r.store.(store.MetadataStore)
	if !ok {
		return errors.New("no store to save the prelude in")
	}
	if err := library.New(nil).LoadPrelude(src); err != nil {
		return err
	}
	return ms.SetMetadata(PreludeKey, src)
}
