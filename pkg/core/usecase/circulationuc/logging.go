// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package circulationuc

import (
	"context"
	"log/slog"

	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
)

// logFailure logs the rejected requests at the info level (as they
// are expected outcomes) and other failures at the error level.
func logFailure(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	as := make([]slog.Attr, 0, len(attrs)+2)
	as = append(as, attrs...)
	as = append(as, log.Err("err", err))
	k := cerr.KindOf(err)
	if k == cerr.KindUnknown {
		log.Error(ctx, msg, as...)
		return
	}
	log.Info(ctx, msg, append(as, log.Kind("kind", k))...)
}
