package calendarium

import (
	"errors"
	"fmt"

	"github.com/churchcal/calrepo/config"
	"github.com/churchcal/calrepo/temporale"
)

// ErrNilDataset is returned when a factory is given no sanctorale.
var ErrNilDataset = errors.New("calendarium: nil sanctorale dataset")

// UnknownTransferRuleError is returned by PerpetualFactory for a
// transfer-to-Sunday rule it does not implement.
type UnknownTransferRuleError struct {
	Rule temporale.TransferRule
}

func (e *UnknownTransferRuleError) Error() string {
	return fmt.Sprintf("unknown transfer_to_sunday rule %q", e.Rule)
}

// Is reports the error as a configuration defect.
func (e *UnknownTransferRuleError) Is(target error) bool {
	return target == config.ErrInvalidConfig
}
