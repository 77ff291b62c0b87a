package corpus

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// firstDaf is the first daf of every Bavli tractate.
const firstDaf = 2

type gemaraTable struct {
	Tractates []struct {
		Name string `yaml:"name"`
		Last int    `yaml:"last"`
	} `yaml:"tractates"`
}

type mishnayotTable struct {
	Sedarim []struct {
		Name      string `yaml:"name"`
		Masechtot []struct {
			Name    string `yaml:"name"`
			Perakim []int  `yaml:"perakim"`
		} `yaml:"masechtot"`
	} `yaml:"sedarim"`
}

type mishnaBeruraTable struct {
	Chalakim []struct {
		Name   string `yaml:"name"`
		Topics []struct {
			Name  string `yaml:"name"`
			Start int    `yaml:"start"`
			End   int    `yaml:"end"`
		} `yaml:"topics"`
	} `yaml:"chalakim"`
}

func loadGemara(raw []byte) ([]Entry, error) {
	var t gemaraTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(t.Tractates))
	for _, tr := range t.Tractates {
		entries = append(entries, Entry{Name: tr.Name, First: firstDaf, Last: tr.Last})
	}
	return entries, nil
}

func loadMishnayot(raw []byte) ([]Entry, error) {
	var t mishnayotTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	var entries []Entry
	for _, seder := range t.Sedarim {
		for _, m := range seder.Masechtot {
			if len(m.Perakim) == 0 {
				return nil, fmt.Errorf("masechet %q has no perakim", m.Name)
			}
			entries = append(entries, Entry{
				Name:  m.Name,
				Group: seder.Name,
				First: 1,
				Last:  len(m.Perakim),
				Items: m.Perakim,
			})
		}
	}
	return entries, nil
}

// loadMishnaBerura yields one entry per chelek spanning all its topics,
// followed by one entry per topic.
func loadMishnaBerura(raw []byte) ([]Entry, error) {
	var t mishnaBeruraTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	var chalakim, topics []Entry
	for _, chelek := range t.Chalakim {
		if len(chelek.Topics) == 0 {
			return nil, fmt.Errorf("chelek %q has no topics", chelek.Name)
		}
		whole := Entry{Name: chelek.Name, First: chelek.Topics[0].Start, Last: chelek.Topics[0].End}
		for _, topic := range chelek.Topics {
			whole.First = min(whole.First, topic.Start)
			whole.Last = max(whole.Last, topic.End)
			topics = append(topics, Entry{
				Name:  topic.Name,
				Group: chelek.Name,
				First: topic.Start,
				Last:  topic.End,
			})
		}
		chalakim = append(chalakim, whole)
	}
	return append(chalakim, topics...), nil
}
