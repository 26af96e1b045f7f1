// Command arvelie converts dates between the Gregorian and Arvelie calendars
// and reports the season and period of the day.
//
// Usage:
//
//	arvelie convert 2025-06-21 25M03 --output json
//	arvelie today --tz Europe/Berlin
//	arvelie season 2025-07-04 --hour 20 --traditional=false
package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	if err := newRootCmd(os.Stdout, time.Now).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
