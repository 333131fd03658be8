package domain

type SpeedOrder string

const (
	OrderFullSpeed SpeedOrder = "full_speed"
	OrderHalfSpeed SpeedOrder = "half_speed"
	OrderFullStop  SpeedOrder = "full_stop"
)

func (o SpeedOrder) Valid() bool {
	switch o {
	case OrderFullSpeed, OrderHalfSpeed, OrderFullStop:
		return true
	}
	return false
}
