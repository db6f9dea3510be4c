package selection

import (
	"math"

	"github.com/okian/moodmix/internal/domain/model"
)

// Weights and saturation factors of the diversity score.
const (
	artistWeight = 0.4
	tempoWeight  = 0.3
	energyWeight = 0.3

	artistFactor = 150.0
	tempoFactor  = 3.0
	energyFactor = 300.0
)

// Stats computes realized diversity for tracks. Standard deviations are
// population figures. An empty slice yields zero stats.
func Stats(tracks []model.Track) model.DiversityStats {
	if len(tracks) == 0 {
		return model.DiversityStats{}
	}
	artists := make(map[string]struct{})
	tempos := make([]float64, len(tracks))
	energies := make([]float64, len(tracks))
	for i, t := range tracks {
		for _, a := range artistKeys(t) {
			artists[a] = struct{}{}
		}
		f := t.FeaturesOrNeutral()
		tempos[i] = f.Tempo
		energies[i] = f.Energy
	}

	st := model.DiversityStats{UniqueArtists: len(artists)}
	st.TempoMean, st.TempoStdDev = meanStdDev(tempos)
	st.EnergyMean, st.EnergyStdDev = meanStdDev(energies)

	uniqueRatio := math.Min(1, float64(st.UniqueArtists)/float64(len(tracks)))
	st.Score = artistWeight*math.Min(100, uniqueRatio*artistFactor) +
		tempoWeight*math.Min(100, st.TempoStdDev*tempoFactor) +
		energyWeight*math.Min(100, st.EnergyStdDev*energyFactor)
	return st
}

func meanStdDev(values []float64) (mean, sd float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}
