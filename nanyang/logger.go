package nanyang

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// nyLog 是躬耕南阳模块的子日志器，自动携带 module=nanyang 字段。
var nyLog zerolog.Logger = log.With().Str("module", "nanyang").Logger()
