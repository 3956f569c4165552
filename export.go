package orbel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var trajectoryHeader = []string{
	"t_yr", "M_deg", "E_deg", "nu_deg",
	"x_rel", "y_rel", "z_rel", "vx_rel", "vy_rel", "vz_rel",
	"x1", "y1", "z1", "x2", "y2", "z2",
	"east1", "north1", "east2", "north2",
	"converged",
}

// WriteTrajectoryCSV writes one CSV record per evaluation. Positions are in AU,
// velocities in AU/yr and angles in degrees.
func WriteTrajectoryCSV(w io.Writer, evals []*Evaluation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}
	ff := func(v float64) string {
		return strconv.FormatFloat(v, 'g', 12, 64)
	}
	record := make([]string, 0, len(trajectoryHeader))
	for idx, ev := range evals {
		if ev == nil {
			return fmt.Errorf("evaluation #%d is nil", idx)
		}
		s := ev.State
		sky1, sky2 := ev.Sky()
		record = record[:0]
		record = append(record, ff(ev.Time), ff(Rad2deg(ev.Anomalies.Mean)), ff(Rad2deg(ev.Anomalies.Eccentric)), ff(Rad2deg(ev.Anomalies.True)))
		for _, vec := range [][]float64{s.Relative, s.RelativeVelocity, s.Body1, s.Body2} {
			record = append(record, ff(vec[0]), ff(vec[1]), ff(vec[2]))
		}
		record = append(record, ff(sky1.East), ff(sky1.North), ff(sky2.East), ff(sky2.North))
		record = append(record, strconv.FormatBool(ev.Solution.Converged))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTrajectory writes the evaluations to the provided CSV file, truncating it.
func ExportTrajectory(filename string, evals []*Evaluation) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTrajectoryCSV(f, evals)
}
