package supergame

// Snapshot is the serialisable view of a Game.
type Snapshot struct {
	Board         [BoardSize]Board  `json:"board"`
	MicroResults  [BoardSize]Result `json:"micro_results"`
	MacroBoard    Board             `json:"macro_board"`
	MacroResult   Result            `json:"macro_result"`
	ActivePlayer  Mark              `json:"active_player"`
	RoutingTarget *int              `json:"routing_target"`
	RoutingLabel  string            `json:"routing_label,omitempty"`
	Status        string            `json:"status"`
	LegalMoves    int               `json:"legal_moves"`
}

func (that Game) Snapshot() Snapshot {
	snapshot := Snapshot{
		MicroResults: that.microResults(),
		MacroBoard:   that.MacroBoard(),
		MacroResult:  that.macroResult,
		ActivePlayer: that.active,
		Status:       Status(that),
		LegalMoves:   len(that.LegalMoves()),
	}

	for i := range that.micro {
		snapshot.Board[i] = that.micro[i].cells
	}

	if that.target != AnyBoard {
		target := that.target
		snapshot.RoutingTarget = &target
		snapshot.RoutingLabel = PositionLabel(target)
	}

	return snapshot
}
