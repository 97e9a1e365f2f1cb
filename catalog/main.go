package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/coursegraph/coursegraph/config"
	"github.com/coursegraph/coursegraph/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/net/html"
)

type Department struct {
	Code string
	Name string
}

func ScrapeDepartments(catalogURL string) ([]Department, error) {
	response, err := http.Get(catalogURL + "/departments")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	var departments []Department

	departmentLinks := document.Find("ul.department-list").Find("a")
	departmentLinks.Each(func(i int, departmentLink *goquery.Selection) {
		label, err := departmentLink.Html()
		if err != nil {
			log.Println("Unable to determine department label")
			return
		}
		label = html.UnescapeString(label)

		code, name, found := strings.Cut(label, " - ")
		if !found {
			log.Println("Unable to determine department code and name")
			return
		}

		departments = append(departments, Department{Code: strings.TrimSpace(code), Name: strings.TrimSpace(name)})
	})

	return departments, nil
}

func ScrapeDepartmentCourses(catalogURL string, department Department) ([]db.Course, error) {
	request, err := http.NewRequest("GET", catalogURL+"/courses", nil)
	if err != nil {
		return nil, err
	}

	query := request.URL.Query()
	query.Add("department", department.Code)
	request.URL.RawQuery = query.Encode()

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	var courses []db.Course

	courseDivs := document.Find("div.course")
	for _, root := range courseDivs.Nodes {
		courseDiv := goquery.NewDocumentFromNode(root)

		heading, err := courseDiv.Find("h3.course-title").Html()
		if err != nil {
			log.Println("Unable to determine course heading")
			continue
		}
		heading = html.UnescapeString(heading)

		label, found := strings.CutPrefix(heading, department.Code+" ")
		if !found {
			log.Println("Unable to determine course number for heading: " + heading)
			continue
		}
		number, title, found := strings.Cut(label, " ")
		if !found {
			log.Println("Unable to determine course title for heading: " + heading)
			continue
		}

		course := db.Course{
			Department:       department.Code,
			Number:           number,
			Title:            strings.TrimSpace(title),
			PrerequisiteText: sectionText(courseDiv, "div.prerequisite"),
			CorequisiteText:  sectionText(courseDiv, "div.corequisite"),
			NotesText:        sectionText(courseDiv, "div.notes"),
		}
		courses = append(courses, course)
	}

	return courses, nil
}

func sectionText(courseDiv *goquery.Document, selector string) string {
	section := courseDiv.Find(selector)
	if section.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(section.Text()))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.CatalogURL == "" {
		log.Fatal(errors.New("catalog_url is not configured"))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseConnectionString)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	database := db.Database{Pool: pool}

	departments, err := ScrapeDepartments(cfg.CatalogURL)
	if err != nil {
		log.Fatal(err)
	}

	var wg sync.WaitGroup
	for _, department := range departments {
		wg.Add(1)

		go func(d Department) {
			defer wg.Done()

			courses, err := ScrapeDepartmentCourses(cfg.CatalogURL, d)
			if err != nil {
				log.Println("Unable to scrape courses for department: " + d.Code)
				return
			}

			if err := database.InsertCourses(courses); err != nil {
				log.Fatal(err)
			}

			log.Printf("%v: %v courses", d.Code, len(courses))
		}(department)
	}
	wg.Wait()
}
