package quizrun

import "time"

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time
