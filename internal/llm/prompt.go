package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dagrapport/internal/model"
)

// Sampling temperatures for the two report calls
const (
	GenerateTemperature float32 = 0.1
	RefineTemperature   float32 = 0.2
)

// baseInstruction fixes the working method, section structure and style of every report
const baseInstruction = `Je bent de 'ago natura rapportage bot'. Je genereert dagrapportages die professioneel, warm en prettig leesbaar zijn, terwijl je strikt objectieve 'camera-taal' hanteert.

WERKWIJZE (ZEER BELANGRIJK):
- Gebruik UITSLUITEND informatie die letterlijk door de gebruiker is ingevoerd.
- Voeg GEEN nieuwe informatie, verbanden, effecten, conclusies of verklaringen toe, tenzij expliciet gevraagd in een bijsturingsverzoek.
- Je taak is losse observaties samenvoegen tot een goed leesbaar, lopend verhaal zonder betekenis toe te kennen aan gedrag.
- Suggereer GEEN oorzaak-gevolg (schrijf niet: "het kind werd rustig door de wandeling").
- Beschrijf NIET wat iets "deed" met het kind of innerlijke toestanden (geen: "liet zich niet afleiden", "kwam tot rust").
- Je mag herformuleren, chronologisch ordenen en taal vloeiender maken, maar NIET invullen waarom iets gebeurde.

STRUCTUUR RICHTLIJNEN:

1. Sectie **ALGEMEEN**:
   - Schrijf één doorlopend, verhalend stuk tekst in camera-taal.
   - Gebruik GEEN opsommingen en GEEN subkopjes.
   - Verwerk alle relevante observaties uit de dag in een logisch lopend verhaal.
   - Noem een incident alleen als er daadwerkelijk een incident is beschreven (markeer als **INCIDENT**).
   - Gebruik GEEN placeholders of zinnen als "(geen informatie aanwezig)".

2. Sectie **DOELEN**:
   - Beschrijf alleen doelen waarvoor relevante observaties zijn ingevoerd.
   - Gebruik per doel exact deze structuur:
     **Doel {nummer}: {titel}**
     Wat gebeurde er bij dit doel:
     - Kind: {beschrijf wat zichtbaar of hoorbaar was}
     - Begeleider: {beschrijf wat de begeleider deed}
   - Als er bij een specifiek onderdeel (Kind/Begeleider) geen informatie is, laat dat onderdeel dan volledig weg.

STIJL:
- Verwijs naar het kind met de naam of initiaal zoals opgegeven.
- Verwijs naar de begeleider als 'Begeleider {initialen}'.
- Gebruik Markdown voor de koppen.`

// BaseInstruction returns the fixed instruction shared by generate and refine
func BaseInstruction() string {
	return baseInstruction
}

// BuildSystemInstruction assembles the instruction for a first generation from the form
func BuildSystemInstruction(data model.ReportData) string {
	var b strings.Builder
	b.WriteString(baseInstruction)
	b.WriteString("\n\nAANVULLENDE INFO:\n")
	fmt.Fprintf(&b, "- Kind: %s\n", data.ChildName)
	fmt.Fprintf(&b, "- Begeleider: %s\n", data.BegeleiderInitials)
	b.WriteString("\nINPUT DATA:\n")
	b.WriteString(inputData(data))
	b.WriteString("\n\nDOELEN DATA:\n")
	b.WriteString(goalsData(data))
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// BuildGeneratePrompt returns the user turn for a first generation
func BuildGeneratePrompt(data model.ReportData) string {
	return fmt.Sprintf(`Genereer de dagrapportage voor %s.
Houd je strikt aan de werkwijze: alleen feitelijke observaties, geen toegevoegde conclusies.
Begin direct met de kop **ALGEMEEN**.`, data.ChildName)
}

// BuildRefineInstruction assembles the instruction for adjusting an existing report
func BuildRefineInstruction(original, feedback string) string {
	return fmt.Sprintf(`%s

JE TAAK:
Pas de onderstaande rapportage aan op basis van de feedback van de gebruiker.
Verwerk nieuwe informatie naadloos in het verhalende gedeelte of de doelen.
Als de gebruiker vraagt om een letterlijk citaat, voeg dit dan exact zo toe.
Behoud de strikte camera-taal en de markdown structuur (**ALGEMEEN** en **DOELEN**).

OORSPRONKELIJK VERSLAG:
%s

FEEDBACK / AANPASSINGEN:
%s
`, baseInstruction, original, feedback)
}

// BuildRefinePrompt returns the user turn for a refinement
func BuildRefinePrompt(data model.ReportData) string {
	return fmt.Sprintf(`Update de rapportage voor %s op basis van de feedback.
Zorg dat het resultaat een volledig, verbeterd verslag is.
Begin direct met de kop **ALGEMEEN**.`, data.ChildName)
}

// inputData combines the free-text fields the way the report model expects them
func inputData(data model.ReportData) string {
	lines := []string{
		"Input verloop dag: " + data.ActivitiesGeneral,
		"Extra context bij verloop: " + joinNonEmpty(data.ActivitiesStart, data.ActivitiesMid, data.ActivitiesEnd),
		"Bijzonderheden/signalen: " + joinNonEmpty(data.NeedsSignalsIndruk, data.NeedsSignalsCamera),
		"Behoeften/acties begeleider: " + joinNonEmpty(data.NeedsWhat, data.NeedsAction),
		"Context/Sfeer: " + data.ExtraContext,
		"Incident data: " + data.Incidents,
	}
	return strings.Join(lines, "\n")
}

// goalsData lists complete goals numbered from 1 in form order
func goalsData(data model.ReportData) string {
	var b strings.Builder
	for i, g := range data.CompleteGoals() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "DOEL INPUT %d:\n- Titel: %s\n- Observatie/Actie: %s\n", i+1, g.Title, g.Content)
	}
	return b.String()
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
