package report

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/aacdash/internal/aggregate"
	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

const notebookURL = "https://github.com/Airiseru/dsf-s1-cc/blob/main/cc-project-nb.ipynb"

func (s *Service) aboutSections() []Section {
	tl := aggregate.TransactionTimeline(s.snap.Transactions())

	period := "no transactions loaded"
	if tl.Transactions > 0 {
		period = formatPeriod(tl.First) + " - " + formatPeriod(tl.Last)
	}

	return []Section{
		{
			Heading: "About the Project",
			Body: "This project analyses the customers of Adobo Advantage Cards (AAC). " +
				"It gathers information about the customers from their transaction history and " +
				"suggests actionable steps the business can take to maintain or improve their spending behaviour.",
		},
		{
			Heading: "Goals and Objectives",
			Body:    "How do we better drive the business?",
			Table: &Table{
				Columns: []string{"Goal", "Focus", "Question"},
				Rows: [][]string{
					{"Customer Demographics", "Understand the customers of the company", "Who are they?"},
					{"Spending Behaviors", "Understand how customers use their credit card", "What do they keep buying?"},
					{"Steps and Strategies", "Recommend actionable items to drive growth", "What can AAC do with this information?"},
				},
			},
		},
		{
			Heading: "About the Dataset",
			Body: fmt.Sprintf("Transaction history period: %s. The category column is divided into physical, "+
				"digital and others: net marks digital transactions, pos marks physical ones.", strings.ToUpper(period)),
		},
		{
			Heading: "Scopes and Limitations",
			Body: "The analysis covers the period of the dataset only. Categories that do not say whether " +
				"they were physical or digital are counted as others so that no transaction is ambiguous.",
			Table: classificationTable(),
		},
	}
}

func classificationTable() *Table {
	byType := map[category.Type][]string{}
	for _, code := range category.Codes() {
		t := category.Classify(code)
		byType[t] = append(byType[t], code)
	}

	t := &Table{Columns: []string{"Type", "Categories"}}
	for _, ct := range category.Types() {
		t.Rows = append(t.Rows, []string{string(ct), strings.Join(byType[ct], ", ")})
	}

	return t
}

func (s *Service) methodologySections() ([]Section, error) {
	customers := s.snap.Customers()
	txs := s.snap.Transactions()

	sections := []Section{
		{
			Heading: "Methodology",
			Body: "This page shows the preprocessing done on the dataset, explores it through charts, and " +
				"describes how customers were clustered. The full analysis lives in the notebook: " + notebookURL,
		},
	}

	preprocessing := Section{
		Heading: "Data Preprocessing",
		Body: "1. Dropped duplicate rows and rows with null values\n" +
			"2. Standardised gender to F or M\n" +
			"3. Removed the dollar sign from amt and converted it to a decimal\n" +
			"4. Cleaned city_pop into an integer\n" +
			"5. Converted dob and unix_time to timestamps\n" +
			"6. Added age, generation, transaction hour/month/year and elapsed days",
		Table: s.opts.RawPreview,
	}
	sections = append(sections, preprocessing)

	tl := aggregate.TransactionTimeline(txs)

	holders := tl.AccountHolders
	if holders == 0 {
		holders = len(customers)
	}

	timeline := "No transactions loaded."
	if tl.Transactions > 0 {
		timeline = fmt.Sprintf("%d transactions from %d account holders between %s and %s.",
			tl.Transactions, holders, formatPeriod(tl.First), formatPeriod(tl.Last))
	}

	sections = append(sections, Section{
		Heading: "Transaction Timeline and Number of Account Holders",
		Body:    timeline,
	})

	genders := aggregate.GenderDistribution(customers)
	for i := range genders {
		genders[i].Key = genderLabel(genders[i].Key)
	}

	sections = append(sections, Section{
		Heading: "Gender Distribution",
		Body:    leaderSentence(genders, len(customers), "%d%% of the customers are %s."),
		Chart:   countChart(genders),
	})

	generations := aggregate.GenerationDistribution(customers)

	ageBody := leaderSentence(generations, len(customers), "%d%% of the customers are %s.")
	if ages, ok := aggregate.Ages(customers); ok {
		ageBody += fmt.Sprintf(" The youngest customer is %d years old, the eldest %d, and the average age is %d.",
			ages.Min, ages.Max, ages.Mean)
	}

	sections = append(sections, Section{
		Heading: "Age Distribution",
		Body:    ageBody,
		Chart:   countChart(generations),
	})

	cities := aggregate.TopCities(customers, s.opts.TopCities)
	sections = append(sections, Section{
		Heading: "City Distribution",
		Body:    leaderSentence(cities, len(customers), "%d%% of the customers live in %s, the top city."),
		Chart:   countChart(cities),
	})

	counts := aggregate.CategoryCounts(txs)

	countsChart, err := categoryChart(counts, "transactions", func(c aggregate.CategoryStat) float64 {
		return float64(c.Count)
	})
	if err != nil {
		return nil, err
	}

	sections = append(sections, Section{
		Heading: "Category based on number of transactions",
		Body:    topCategorySentence(countsChart, "has the most transactions"),
		Chart:   countsChart,
	})

	totals := aggregate.CategoryTotals(txs)

	totalsChart, err := categoryChart(totals, "amount", func(c aggregate.CategoryStat) float64 {
		return c.Total.InexactFloat64()
	})
	if err != nil {
		return nil, err
	}

	sections = append(sections, Section{
		Heading: "Category based on the amount spent",
		Body:    topCategorySentence(totalsChart, "has the highest amount spent"),
		Chart:   totalsChart,
	})

	clusters := s.Clusters()
	sections = append(sections, Section{
		Heading: "Clustering",
		Body: fmt.Sprintf("Customers were grouped with K-Means on recency, frequency and monetary (RFM) "+
			"features computed from their transactions. The extract carries %d cluster labels.", len(clusters)),
	})

	return sections, nil
}

func (s *Service) resultsSections() ([]Section, error) {
	byType, err := s.TypeGenerationTable()
	if err != nil {
		return nil, err
	}

	byCategory, err := s.CategoryGenerationTable()
	if err != nil {
		return nil, err
	}

	sections := []Section{
		{
			Heading: "Average Spending by Category Type and Generation",
			Body:    "Mean transaction amount, rounded to whole units. Cohorts without transactions show " + NoData + ".",
			Table:   byType,
		},
		{
			Heading: "Average Spending by Category and Generation",
			Table:   byCategory,
		},
		{
			Heading: "Monthly Average Spending",
			Body: "Physical and digital monthly means side by side. Only months with both physical " +
				"and digital transactions are listed.",
			Table: s.MonthlyTable(),
		},
	}

	for _, c := range s.Clusters() {
		sec, err := clusterSection(c)
		if err != nil {
			return nil, err
		}

		sections = append(sections, *sec)
	}

	return sections, nil
}

func clusterSection(c aggregate.ClusterSummary) (*Section, error) {
	top := NoData
	if c.TopCategory != "" {
		label, err := category.Label(c.TopCategory)
		if err != nil {
			return nil, err
		}

		top = label
	}

	generation := NoData
	if c.DominantGeneration != "" {
		generation = string(c.DominantGeneration)
	}

	t := &Table{
		Columns: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Customers", fmt.Sprint(c.Customers)},
			{"Transactions", fmt.Sprint(c.Transactions)},
			{"Total spent", formatMoney(c.TotalAmount)},
			{"Average transaction", FormatUnits(c.MeanAmount)},
			{"Average age", fmt.Sprint(c.MeanAge)},
			{"Dominant generation", generation},
			{"Top category", top},
		},
	}

	for _, ct := range category.Types() {
		share := NoData
		if v, ok := c.TypeShare[ct]; ok {
			share = v.StringFixed(1) + "%"
		}

		t.Rows = append(t.Rows, []string{string(ct) + " share", share})
	}

	return &Section{Heading: fmt.Sprintf("Cluster %d", c.Cluster), Table: t}, nil
}

func (s *Service) summarySections() ([]Section, error) {
	customers := s.snap.Customers()
	txs := s.snap.Transactions()

	var findings []string

	if gens := aggregate.GenerationDistribution(customers); len(gens) > 0 {
		findings = append(findings, fmt.Sprintf("%s make up %d%% of the customer base.",
			gens[0].Key, percent(gens[0].Count, len(customers))))
	}

	if counts := aggregate.CategoryCounts(txs); len(counts) > 0 {
		label, err := category.Label(counts[0].Category)
		if err != nil {
			return nil, err
		}

		findings = append(findings, fmt.Sprintf("%s is the most frequent category with %d transactions.",
			label, counts[0].Count))
	}

	typeTotals := aggregate.TypeTotals(txs)
	if len(typeTotals) > 0 {
		var parts []string
		for _, tt := range typeTotals {
			parts = append(parts, fmt.Sprintf("%s %s", tt.Category, formatMoney(tt.Total)))
		}

		findings = append(findings, "Total spent per category type: "+strings.Join(parts, ", ")+".")
	}

	monthly := s.MonthlySpending()

	physicalAhead := 0
	for _, m := range monthly {
		if m.Physical > m.Digital {
			physicalAhead++
		}
	}

	if len(monthly) > 0 {
		findings = append(findings, fmt.Sprintf("Physical spending averaged above digital in %d of %d comparable months.",
			physicalAhead, len(monthly)))
	}

	findings = append(findings, fmt.Sprintf("Customers fall into %d clusters.", len(s.Clusters())))

	chart := &Chart{Unit: "amount"}
	for _, tt := range typeTotals {
		chart.Bars = append(chart.Bars, Bar{Label: tt.Category, Value: tt.Total.InexactFloat64()})
	}

	return []Section{
		{
			Heading: "Summary of Findings",
			Body:    numbered(findings),
			Chart:   chart,
		},
		{
			Heading: "Recommendations",
			Body: numbered([]string{
				"Keep rewarding in-store grocery spending, the habit the customer base already has.",
				"Introduce older customers to online purchases with simple, assisted onboarding.",
				"Tailor offers per cluster using its dominant generation and top category.",
			}),
		},
	}, nil
}

// leaderSentence describes the largest group of a distribution.
func leaderSentence(counts []aggregate.Count, total int, format string) string {
	if len(counts) == 0 || total == 0 {
		return "No customers loaded."
	}

	return fmt.Sprintf(format, percent(counts[0].Count, total), counts[0].Key)
}

func genderLabel(g string) string {
	switch dataset.Gender(g) {
	case dataset.GenderFemale:
		return "Female"
	case dataset.GenderMale:
		return "Male"
	}

	return g
}

func topCategorySentence(c *Chart, what string) string {
	if len(c.Bars) == 0 {
		return "No transactions loaded."
	}

	return fmt.Sprintf("%s %s.", c.Bars[0].Label, what)
}

func numbered(lines []string) string {
	var sb strings.Builder

	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "%d. %s", i+1, l)
	}

	return sb.String()
}
