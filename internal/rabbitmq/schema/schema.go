package schema

import (
	"encoding/json"
	"time"
)

type PasswordChangedAlert struct {
	Email     string
	ChangedAt time.Time
}

func (a *PasswordChangedAlert) Marshal() ([]byte, error) {
	return json.Marshal(a)
}

func (a *PasswordChangedAlert) Unmarshal(data []byte) error {
	return json.Unmarshal(data, a)
}
