// Command wagecalc calculates shift earnings, serves the calculator API and
// exports timesheets.
package main

func main() {
	Execute()
}
