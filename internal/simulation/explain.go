package simulation

import "fmt"

const explanationBody = `
**Cortisol (Stress Hormone):**
Rises when stress is high. Too much long-term cortisol may cause fatigue and anxiety.

**Dopamine (Motivation & Reward):**
Increases with activity. It fuels drive, focus, and positive mood.

**Serotonin (Mood Stabilizer):**
Improves with better sleep and balance. It’s linked to calmness and emotional stability.

🧠 *This simulation is a simplified digital twin of your brain chemistry.
It shows how lifestyle and stress interact with biology in real-time.*
`

// Explain renders the markdown summary for a run. The three input values
// are echoed verbatim; the rest of the text is fixed.
func Explain(in Input) string {
	return fmt.Sprintf(`
### 🧾 Simulation Results

- **Stress Level:** %d/100
- **Sleep Quality:** %d/10
- **Lifestyle Activity:** %d/10
%s`, in.Stress, in.SleepQuality, in.ActivityLevel, explanationBody)
}
