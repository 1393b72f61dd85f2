package training

import "github.com/inboxkit/email-classifier/internal/core"

// BaselineCorpus returns the embedded labeled examples every model is trained
// on. Feedback-derived examples are appended to this set, never substituted
// for it, so a burst of corrections cannot erase a category.
func BaselineCorpus() []core.TrainingExample {
	examples := []struct {
		text  string
		label core.Category
	}{
		// spam
		{"YOU'VE WON $1,000,000! Congratulations! Click here immediately to claim your prize. Act now!", core.CategorySpam},
		{"URGENT: Account Verification Required. Your account will be suspended in 24 hours. Verify now or lose access.", core.CategorySpam},
		{"Get Rich Quick - Limited Spots Available. Make $10,000 per week working from home. No experience needed!", core.CategorySpam},
		{"Exclusive Offer Just For You!!! Buy now and save 90%!!! Limited time only! Don't miss out!!!", core.CategorySpam},
		{"I am a prince with millions of dollars. I need your bank account to transfer the inheritance.", core.CategorySpam},
		{"Weight Loss Miracle. Lose 30 pounds in 30 days without diet or exercise. Doctors hate this trick!", core.CategorySpam},
		{"Hot singles in your area want to meet you tonight. Click here for free access.", core.CategorySpam},
		{"Pharmacy Discount - No Prescription. Get medications 80% off. No prescription required. Fast shipping.", core.CategorySpam},
		{"IRS Tax Refund Notification. You have a refund waiting. Click to claim $3,457.89 immediately!", core.CategorySpam},
		{"Free iPhone 15 - Complete this 2-minute survey for a free iPhone 15 Pro Max!", core.CategorySpam},
		{"Crypto Investment Opportunity. Bitcoin secret: Turn $100 into $10,000 in 30 days guaranteed!", core.CategorySpam},
		{"Reduce your debt by 70%. Pre-approved offer expires soon! Act fast!", core.CategorySpam},
		{"Earn $5000/week stuffing envelopes at home. No experience required! Start today!", core.CategorySpam},
		{"Unusual activity detected. Reset password immediately to avoid suspension. Click this link now.", core.CategorySpam},
		{"Your package could not be delivered. Click here to reschedule delivery and pay a $2.99 fee.", core.CategorySpam},
		{"WINNER! You are our 1 millionth visitor! Claim your free prize now before it expires!", core.CategorySpam},
		{"Foreign lottery winnings! You won $5 million! Send processing fee of $500 to claim.", core.CategorySpam},
		{"You've qualified for a $50,000 personal loan! No credit check! Guaranteed approval! Apply now!", core.CategorySpam},
		{"Your Amazon account has suspicious activity. Verify now or your account will be closed!", core.CategorySpam},
		{"Hot stock tip! This penny stock will make you rich! Buy now before it's too late!", core.CategorySpam},

		// important
		{"Board Meeting - Thursday 10 AM. Reminder: Quarterly board meeting is this Thursday. Please review the attached financials before the meeting.", core.CategoryImportant},
		{"Project Deadline: Friday EOD. The client deliverable is due Friday end of day. Please ensure all tasks are completed and tested.", core.CategoryImportant},
		{"Security Alert: we detected a login from an unrecognized device. If this wasn't you, reset your password immediately.", core.CategoryImportant},
		{"Invoice #12345 for $15,000 is now 30 days past due. Please process payment immediately to avoid late fees.", core.CategoryImportant},
		{"Contract Expiring - Action Required. Your service contract expires in 7 days. Renew now to avoid service interruption.", core.CategoryImportant},
		{"URGENT: Server Outage Reported. Production server is down. Customers are unable to access the platform. All hands needed.", core.CategoryImportant},
		{"Legal Notice - Response Required. You have 15 days to respond to this legal notice. Failure to respond may result in default judgment.", core.CategoryImportant},
		{"Annual Performance Review Scheduled. Your annual review is scheduled for Monday at 2 PM. Please complete your self-assessment beforehand.", core.CategoryImportant},
		{"Budget Approval Needed. Q4 marketing budget of $50,000 needs your approval by tomorrow for vendor commitments.", core.CategoryImportant},
		{"System Maintenance Tonight. Planned maintenance window tonight 11 PM - 3 AM. All systems will be unavailable.", core.CategoryImportant},
		{"Client Escalation - Immediate Attention. Major client is threatening to cancel the contract. Need your involvement ASAP.", core.CategoryImportant},
		{"Compliance Audit Next Week. External auditors arriving Monday. All documentation must be ready.", core.CategoryImportant},
		{"Data Breach Investigation. Potential security breach detected. Forensics team needs to investigate immediately.", core.CategoryImportant},
		{"Urgent: CEO needs the quarterly report for the investor meeting tomorrow morning.", core.CategoryImportant},
		{"Q4 report deadline. The Q4 financial report is due to the board by end of week. This is a critical deliverable.", core.CategoryImportant},
		{"From CEO: Company-wide town hall next Wednesday. Mandatory attendance for all employees.", core.CategoryImportant},
		{"Legal Notice: Contract deadline is Friday. Please review and sign the attached documents immediately.", core.CategoryImportant},
		{"From HR: New company policy effective immediately. Please acknowledge receipt and compliance.", core.CategoryImportant},

		// promotion
		{"Flash Sale: 50% Off Everything. Today only! Get 50% off all products. Use code FLASH50 at checkout.", core.CategoryPromotion},
		{"New Spring Collection Launch. Discover our new spring collection. Fresh styles, amazing prices. Shop now!", core.CategoryPromotion},
		{"Exclusive Member Preview Sale. As a valued member, get early access to our biggest sale of the year.", core.CategoryPromotion},
		{"Weekend Special: Buy 2 items, get 1 free! All categories included.", core.CategoryPromotion},
		{"Black Friday Preview. Black Friday starts early for you. Save up to 70% on select items.", core.CategoryPromotion},
		{"Final clearance! Prices slashed up to 80% off. Limited quantities remaining.", core.CategoryPromotion},
		{"New Product Launch. Be the first to own our revolutionary new product. Pre-order today!", core.CategoryPromotion},
		{"Customer Appreciation Sale. Thank you for being a loyal customer. Enjoy 30% off your next purchase.", core.CategoryPromotion},
		{"Limited Edition Collection. Exclusive limited edition items now available. Only 100 made worldwide.", core.CategoryPromotion},
		{"Free shipping on all orders this weekend. No minimum purchase required.", core.CategoryPromotion},
		{"Loyalty Points Bonus. Double points on all purchases this week. Rewards add up faster!", core.CategoryPromotion},
		{"Happy birthday! Enjoy 25% off as our gift to you all month long.", core.CategoryPromotion},
		{"Bundle Deal: Buy the complete bundle and save $100. Best value of the year!", core.CategoryPromotion},
		{"Early Bird Discount. Register early and save 40%. Limited early bird spots available.", core.CategoryPromotion},
		{"Summer season sale is live! Up to 60% off seasonal favorites. Shop the sale now.", core.CategoryPromotion},

		// social
		{"Birthday Party Invitation. You're invited to celebrate my 30th birthday on Saturday! RSVP by Friday.", core.CategorySocial},
		{"Hey! Want to grab coffee this weekend? Let me know what works for you.", core.CategorySocial},
		{"John Smith commented on your vacation photo: Amazing view!", core.CategorySocial},
		{"Event Reminder: the concert is tonight at 8 PM. Meet you at the venue?", core.CategorySocial},
		{"Sarah Johnson wants to connect with you on LinkedIn.", core.CategorySocial},
		{"Alumni Reunion - our 10-year high school reunion is June 15th. Save the date!", core.CategorySocial},
		{"Mike shared a photo album with you: Hawaii Vacation 2024.", core.CategorySocial},
		{"Game Night This Friday. Hosting game night at my place Friday 7 PM. Bring your favorite snacks!", core.CategorySocial},
		{"You're Invited: join us for a free webinar on AI trends. Thursday at 2 PM EST.", core.CategorySocial},
		{"Neighborhood Block Party. Annual block party is next Sunday. Bring the family!", core.CategorySocial},
		{"Book Club Meeting. Our book club meets Tuesday to discuss this month's selection.", core.CategorySocial},
		{"Saw the news about your promotion! Well deserved. Let's celebrate!", core.CategorySocial},
		{"Holiday Card. Wishing you and yours a wonderful holiday season!", core.CategorySocial},
		{"We moved! Come celebrate at our new place Saturday afternoon.", core.CategorySocial},
		{"Save the date: We're getting married on August 20th!", core.CategorySocial},

		// updates
		{"Order Confirmation #789456. Your order has been confirmed. Estimated delivery: 3-5 business days.", core.CategoryUpdates},
		{"Your password was changed successfully. If this wasn't you, contact support immediately.", core.CategoryUpdates},
		{"New Features Available. We've added new features to your account. Check out what's new!", core.CategoryUpdates},
		{"Newsletter: Tech Weekly Digest. This week's top tech stories and industry insights delivered to your inbox.", core.CategoryUpdates},
		{"Monthly Statement Available. Your January statement is ready to view. Download it from your account.", core.CategoryUpdates},
		{"Account Verification Complete. Your email has been verified. Your account is now fully activated.", core.CategoryUpdates},
		{"Subscription Renewal Reminder. Your annual subscription renews in 7 days. Manage auto-renewal in settings.", core.CategoryUpdates},
		{"You and Jessica Williams are now connected on LinkedIn.", core.CategoryUpdates},
		{"Activity Summary: you received 15 messages and 8 comments this week. See details here.", core.CategoryUpdates},
		{"Shipping Notification. Your package has shipped! Track your delivery with the tracking number.", core.CategoryUpdates},
		{"Policy Update Notice. We've updated our privacy policy. Review changes that take effect next month.", core.CategoryUpdates},
		{"Backup Complete. Your weekly backup completed successfully. All data is secured.", core.CategoryUpdates},
		{"Calendar Reminder: Dentist appointment tomorrow at 2 PM.", core.CategoryUpdates},
		{"Software Update Available. Version 2.5 is now available. Update now for new features and security fixes.", core.CategoryUpdates},
		{"Credit Report Updated. Your credit score has been updated. View your latest report.", core.CategoryUpdates},

		// work
		{"Sprint Planning Meeting Notes. Attached are the notes from today's sprint planning session. Review before standup.", core.CategoryWork},
		{"Code Review Request. Please review my pull request #234 for the new authentication feature.", core.CategoryWork},
		{"Weekly Status Report. Here's my status update for the week ending Friday. On track with all deliverables.", core.CategoryWork},
		{"Team lunch at 12:30 PM tomorrow at the Italian place. Join us!", core.CategoryWork},
		{"Q3 OKR Planning Session. Let's schedule time to plan Q3 objectives and key results for the team.", core.CategoryWork},
		{"Architecture Design Review. Proposing new microservices architecture. Review the attached design doc.", core.CategoryWork},
		{"Production Deployment Schedule. Planning production deployment for Sunday 2 AM. Release notes attached.", core.CategoryWork},
		{"Today's standup highlights: 3 items completed, 1 blocker identified.", core.CategoryWork},
		{"Knowledge Sharing: sharing some best practices I learned at the conference last week.", core.CategoryWork},
		{"Project Timeline Update. Updated project timeline based on yesterday's discussion. New deadline is Oct 15.", core.CategoryWork},
		{"Mandatory training on new development tools next Tuesday 10 AM.", core.CategoryWork},
		{"Team Building Event. Mark your calendars: team offsite at the lake on the 25th!", core.CategoryWork},
		{"Performance Metrics Dashboard. New dashboard is live showing team velocity and quality metrics.", core.CategoryWork},
		{"Intern Onboarding Help Needed. New intern starts Monday. Can someone help with their onboarding?", core.CategoryWork},
		{"Documentation Update Completed. Updated API documentation is now published. Please review for accuracy.", core.CategoryWork},
		{"IT Security Advisory. Employees are advised not to share system credentials and to report suspicious emails to the IT support team.", core.CategoryWork},
		{"Phishing Alert Notice. Several phishing emails have been detected. Do not click links from unknown senders.", core.CategoryWork},
		{"Q4 report draft. Attached is the draft of the Q4 report for the team meeting. Please add your project sections by Wednesday.", core.CategoryWork},

		// personal
		{"Doctor Appointment Confirmation. Your appointment with Dr. Smith is confirmed for Tuesday at 3 PM.", core.CategoryPersonal},
		{"Utility Bill Due Soon. Your electricity bill of $125 is due on the 15th. Pay online to avoid a late fee.", core.CategoryPersonal},
		{"Prescription Ready for Pickup. Your prescription is ready at the pharmacy. Pickup within 7 days.", core.CategoryPersonal},
		{"Bank Statement Available. Your checking account statement for January is available in online banking.", core.CategoryPersonal},
		{"Gym Membership Renewal. Your gym membership expires in 2 weeks. Renew online or at the front desk.", core.CategoryPersonal},
		{"Car Service Reminder. Your car is due for a 30,000 mile service. Schedule an appointment today.", core.CategoryPersonal},
		{"Property Tax Notice. Your annual property tax bill is available online. Payment due by April 15.", core.CategoryPersonal},
		{"School Newsletter. Lincoln Elementary School weekly newsletter: upcoming events and announcements.", core.CategoryPersonal},
		{"Veterinarian Appointment Reminder. Max's vet appointment is tomorrow at 4 PM for his annual checkup.", core.CategoryPersonal},
		{"HOA Meeting Notice. Homeowners association meeting this Thursday 7 PM in the clubhouse.", core.CategoryPersonal},
		{"Insurance Policy Renewal. Your auto insurance policy renews next month. Review coverage and rates.", core.CategoryPersonal},
		{"Dentist Cleaning Reminder. You're due for a dental cleaning. Call to schedule your appointment.", core.CategoryPersonal},
		{"Charity Donation Receipt. Thank you for your $100 donation. Tax receipt is attached.", core.CategoryPersonal},
		{"Library Book Due Soon. The book 'Atomic Habits' is due back on Friday. Renew online if needed.", core.CategoryPersonal},
		{"Wedding Anniversary Reminder. Your wedding anniversary is next week. Time to plan something special!", core.CategoryPersonal},

		// support
		{"Help with Login Issue. I can't log into my account. Getting an invalid password error even after reset.", core.CategorySupport},
		{"Feature Request: would be great to have a CSV export option for reports. Is this planned?", core.CategorySupport},
		{"Bug Report: the dashboard page keeps showing a blank screen in Chrome. Works in Firefox.", core.CategorySupport},
		{"How to Cancel Subscription. I'd like to cancel my subscription. Can you guide me through the process?", core.CategorySupport},
		{"Product Question: does your product work with Windows 11? Can't find this in the documentation.", core.CategorySupport},
		{"Account Upgrade Request. I'd like to upgrade from Basic to Premium plan. What's the process?", core.CategorySupport},
		{"Missing Order Items. My order arrived but item #3 was missing from the package. Need a replacement.", core.CategorySupport},
		{"Technical Support Needed. Getting error code 500 when trying to upload files. Screenshot attached.", core.CategorySupport},
		{"Why was I charged twice this month? Need an explanation of the charges on my account.", core.CategorySupport},
		{"Password Reset Not Working. The password reset email never arrives. Checked spam folder already.", core.CategorySupport},
		{"The filter feature doesn't save my preferences. Is this a known issue?", core.CategorySupport},
		{"Integration Help Needed. Trying to integrate with Salesforce. Following the docs but getting auth errors.", core.CategorySupport},
		{"Account Access Issue. I'm locked out of my account after 3 failed login attempts. How do I unlock it?", core.CategorySupport},
		{"Refund Request. The product doesn't meet my needs. Requesting a refund per your 30-day policy.", core.CategorySupport},
		{"Data Export Request. Need to export all my data before canceling. What's the procedure?", core.CategorySupport},

		// billing
		{"Invoice INV-2024-001. Attached is invoice INV-2024-001 for $5,000. Payment terms: Net 30.", core.CategoryBilling},
		{"Payment Confirmation Required. Can you confirm receipt of the wire transfer sent yesterday for invoice #456?", core.CategoryBilling},
		{"Duplicate Charge on My Card. I was charged twice for the subscription this month. Please issue a refund.", core.CategoryBilling},
		{"Request for Updated W9. For our records, please send an updated W9 form for tax purposes.", core.CategoryBilling},
		{"Payment Plan Request. Due to cash flow, requesting to split the payment into 3 monthly installments.", core.CategoryBilling},
		{"Credit Card Update Needed. My credit card on file is expiring. Here are the new card details.", core.CategoryBilling},
		{"Billing Address Change. Our billing address has changed. Please update your records.", core.CategoryBilling},
		{"Pricing Discrepancy. Invoice shows $2,000 but the quote was for $1,800. Please clarify the difference.", core.CategoryBilling},
		{"Tax Exemption Certificate. Attached is our tax exemption certificate. Please remove sales tax from the invoice.", core.CategoryBilling},
		{"Payment Terms Extension. Can we extend payment terms from Net 30 to Net 60 for large orders?", core.CategoryBilling},
		{"Receipt for Payment. Please send a receipt for the $10,000 payment made via check last week.", core.CategoryBilling},
		{"Subscription Downgrade. I'd like to downgrade from Premium to Basic plan starting next month.", core.CategoryBilling},
		{"Proration Question. If I upgrade mid-month, how is the billing prorated?", core.CategoryBilling},
		{"Auto-renewal Cancellation. Please disable auto-renewal for my subscription. I will renew manually.", core.CategoryBilling},
		{"Invoice Correction Needed. Line item 3 on the invoice is incorrect. Should be 10 units, not 15 units.", core.CategoryBilling},
	}

	out := make([]core.TrainingExample, len(examples))
	for i, ex := range examples {
		out[i] = core.TrainingExample{Text: ex.text, Label: ex.label}
	}
	return out
}
