package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	// Configuration
	baseURL := "http://localhost:8080/api/v1"
	contentType := "application/json"

	numEmployees := 500
	daysPerEmployee := 5
	concurrency := 50 // Number of concurrent requests to avoid local port exhaustion

	fmt.Printf("Starting load test: %d employees, %d marks each, against %s with concurrency %d\n",
		numEmployees, daysPerEmployee, baseURL, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency) // Semaphore to limit concurrency

	var successCount int64
	var failCount int64

	startTime := time.Now()

	for i := 0; i < numEmployees; i++ {
		wg.Add(1)
		sem <- struct{}{} // Acquire token

		go func(n int) {
			defer wg.Done()
			defer func() { <-sem }() // Release token

			// Register the employee first
			register := []byte(fmt.Sprintf(
				`{"employee_code": "LOAD%d", "full_name": "Load Tester %d", "email": "load%d@example.com", "department": "Operations"}`,
				n, n, n))

			resp, err := http.Post(baseURL+"/employees", contentType, bytes.NewBuffer(register))
			if err != nil {
				atomic.AddInt64(&failCount, 1)
				return
			}
			var created struct {
				Data struct {
					ID string `json:"id"`
				} `json:"data"`
			}
			err = json.NewDecoder(resp.Body).Decode(&created)
			resp.Body.Close()
			if err != nil || created.Data.ID == "" {
				atomic.AddInt64(&failCount, 1)
				return
			}
			atomic.AddInt64(&successCount, 1)

			// Mark attendance backwards from today; alternate the status
			for d := 0; d < daysPerEmployee; d++ {
				date := time.Now().AddDate(0, 0, -d).Format("2006-01-02")
				status := "Present"
				if (n+d)%4 == 0 {
					status = "Absent"
				}
				mark := []byte(fmt.Sprintf(
					`{"employee_id": "%s", "date": "%s", "status": "%s"}`,
					created.Data.ID, date, status))

				resp, err := http.Post(baseURL+"/attendance", contentType, bytes.NewBuffer(mark))
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}
				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(startTime)
	totalRequests := numEmployees * (1 + daysPerEmployee)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}
