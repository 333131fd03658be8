package rpc

type CommissionRequest struct {
	Name     string   `json:"name"`
	Crew     []string `json:"crew"`
	MaxSpeed float64  `json:"max_speed"`
}

type GetVesselRequest struct {
	VesselId string `json:"vessel_id"`
}

type VesselReply struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Crew         []string `json:"crew"`
	MaxSpeed     float64  `json:"max_speed"`
	CurrentSpeed float64  `json:"current_speed"`
	Version      int32    `json:"version"`
}

type CommandRequest struct {
	RequestId string `json:"request_id"`
	VesselId  string `json:"vessel_id"`
	Order     string `json:"order"`
}

type CommandReply struct {
	Report string `json:"report"`
}

type RollCallRequest struct {
	VesselId string `json:"vessel_id"`
}

type RollCallReply struct {
	Lines []string `json:"lines"`
}

type DismissCrewRequest struct {
	VesselId string `json:"vessel_id"`
	Position int32  `json:"position"`
}

type DismissCrewReply struct {
	Dismissed string `json:"dismissed"`
}
