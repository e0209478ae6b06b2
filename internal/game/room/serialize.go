package room

import (
	"time"

	"github.com/palemoky/blackjack/internal/game/round"
	"github.com/palemoky/blackjack/internal/game/rule"
	"github.com/palemoky/blackjack/internal/server/storage"
)

// ToRoomData 将牌桌快照转换为可序列化的 RoomData
func ToRoomData(name string, snap round.Snapshot, connections int, now time.Time) *storage.RoomData {
	data := &storage.RoomData{
		Room:           name,
		RoundID:        snap.RoundID,
		Phase:          snap.Phase,
		CardsRemaining: snap.CardsRemaining,
		Connections:    connections,
		Dealer:         snap.Dealer,
		Seats:          make([]storage.SeatData, 0, len(snap.Seats)),
		SavedAt:        now.Unix(),
	}

	for _, seat := range snap.Seats {
		data.Seats = append(data.Seats, storage.SeatData{
			Name:     seat.Name,
			Chips:    seat.Chips,
			Wager:    seat.Wager,
			InRound:  seat.InRound,
			Finished: seat.Finished,
			Hands:    seat.Hands,
		})
	}

	return data
}

// ToHandResults 将结算记录转换为战绩累计项
func ToHandResults(results []round.Result) []storage.HandResult {
	hands := make([]storage.HandResult, 0, len(results))
	for _, res := range results {
		hands = append(hands, storage.HandResult{
			Name:      res.Name,
			Outcome:   res.Outcome.String(),
			Win:       res.Outcome.IsWin(),
			Push:      res.Outcome.IsPush(),
			Blackjack: res.Outcome == rule.OutcomePlayerBlackjack,
			Bust:      res.Outcome == rule.OutcomePlayerBust,
			Net:       res.Net(),
		})
	}
	return hands
}
