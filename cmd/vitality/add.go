// ABOUTME: CLI command for recording raw biomarker readings.
// ABOUTME: Upserts one calendar day of daily metrics via flags.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitality/internal/models"
	"github.com/spf13/cobra"
)

var (
	addHRV     float64
	addRHR     float64
	addResp    float64
	addWalkHR  float64
	addSpO2    float64
	addSleep   time.Duration
	addInBed   time.Duration
	addDeep    time.Duration
	addREM     time.Duration
	addAwake   time.Duration
	addLatency time.Duration
	addBedtime string
	addWake    string
)

var addCmd = &cobra.Command{
	Use:     "add [date]",
	Aliases: []string{"a"},
	Short:   "Record raw biomarker readings for a day",
	Long: `Record raw biomarker readings for a calendar day (default today).

A second add for the same day replaces that day's readings wholesale.
Durations accept Go syntax: 7h30m, 90m, 45m.

EXAMPLES:

  vitality add --hrv 48 --rhr 52
  vitality add 2025-06-01 --hrv 48 --rhr 52 --resp 14.5
  vitality add --sleep 7h30m --in-bed 8h --deep 80m --rem 95m
  vitality add --bedtime "2025-06-01T23:10:00Z" --wake "2025-06-02T06:40:00Z"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateArg := ""
		if len(args) > 0 {
			dateArg = args[0]
		}
		date, err := parseDay(dateArg)
		if err != nil {
			return err
		}

		m := models.NewDailyMetrics(date)
		flags := cmd.Flags()
		setIfChanged := func(name string, dst **float64, v float64) {
			if flags.Changed(name) {
				*dst = &v
			}
		}
		setIfChanged("hrv", &m.HRV, addHRV)
		setIfChanged("rhr", &m.RestingHeartRate, addRHR)
		setIfChanged("resp", &m.RespiratoryRate, addResp)
		setIfChanged("walking-hr", &m.WalkingHeartRate, addWalkHR)
		setIfChanged("spo2", &m.OxygenSaturation, addSpO2)
		setIfChanged("sleep", &m.SleepDuration, addSleep.Minutes())
		setIfChanged("in-bed", &m.TimeInBed, addInBed.Minutes())
		setIfChanged("deep", &m.DeepSleep, addDeep.Minutes())
		setIfChanged("rem", &m.REMSleep, addREM.Minutes())
		setIfChanged("awake", &m.AwakeTime, addAwake.Minutes())
		setIfChanged("latency", &m.OnsetLatency, addLatency.Minutes())

		if addBedtime != "" {
			t, err := time.Parse(time.RFC3339, addBedtime)
			if err != nil {
				return fmt.Errorf("invalid bedtime: %s", addBedtime)
			}
			m.Bedtime = &t
		}
		if addWake != "" {
			t, err := time.Parse(time.RFC3339, addWake)
			if err != nil {
				return fmt.Errorf("invalid wake time: %s", addWake)
			}
			m.WakeTime = &t
		}

		if err := repo.UpsertDailyMetrics(m); err != nil {
			return fmt.Errorf("failed to record metrics: %w", err)
		}

		color.Green("Recorded metrics for %s", models.DayKey(date))
		return nil
	},
}

func init() {
	addCmd.Flags().Float64Var(&addHRV, "hrv", 0, "heart rate variability (ms)")
	addCmd.Flags().Float64Var(&addRHR, "rhr", 0, "resting heart rate (bpm)")
	addCmd.Flags().Float64Var(&addResp, "resp", 0, "respiratory rate (breaths/min)")
	addCmd.Flags().Float64Var(&addWalkHR, "walking-hr", 0, "walking heart rate (bpm)")
	addCmd.Flags().Float64Var(&addSpO2, "spo2", 0, "oxygen saturation (%)")
	addCmd.Flags().DurationVar(&addSleep, "sleep", 0, "time asleep (e.g. 7h30m)")
	addCmd.Flags().DurationVar(&addInBed, "in-bed", 0, "time in bed")
	addCmd.Flags().DurationVar(&addDeep, "deep", 0, "deep sleep")
	addCmd.Flags().DurationVar(&addREM, "rem", 0, "REM sleep")
	addCmd.Flags().DurationVar(&addAwake, "awake", 0, "time awake during the session")
	addCmd.Flags().DurationVar(&addLatency, "latency", 0, "time to fall asleep")
	addCmd.Flags().StringVar(&addBedtime, "bedtime", "", "bedtime (ISO 8601)")
	addCmd.Flags().StringVar(&addWake, "wake", "", "wake time (ISO 8601)")
	rootCmd.AddCommand(addCmd)
}
