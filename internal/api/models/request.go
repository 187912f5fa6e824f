package models

import "encoding/json"

// CastBallotRequest is the vote submission payload. VoteData is the raw
// per-position document keyed "position_<id>" / "position_<id>_abstain";
// it is decoded against the election's position types, not here.
type CastBallotRequest struct {
	VoteData json.RawMessage `json:"votes" binding:"required"`
}

// ListElectionsQuery holds pagination parameters for the election list
type ListElectionsQuery struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
