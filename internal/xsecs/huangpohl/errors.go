package huangpohl

import (
	"fmt"

	"github.com/gcrlab/xsecs/internal/domain"
)

func unsupported(projectile domain.PID, target domain.Target) error {
	return fmt.Errorf("reaction %s+%s not tabulated: %w", projectile, target, domain.ErrUnsupported)
}
