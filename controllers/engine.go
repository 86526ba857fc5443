package controllers

import (
	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/db"
)

func engine() *availability.Engine {
	return availability.NewEngine(db.NewStore(db.DB))
}
